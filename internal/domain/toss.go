package domain

import "math/rand"

// TossCall is the parity guess declared by the calling player.
type TossCall string

const (
	CallOdd  TossCall = "odd"
	CallEven TossCall = "even"
)

// ValidTossCall reports whether c is a recognized parity call.
func ValidTossCall(c TossCall) bool {
	return c == CallOdd || c == CallEven
}

// TossResult captures one two-dice toss.
type TossResult struct {
	Die1        int  `json:"die1"`
	Die2        int  `json:"die2"`
	Sum         int  `json:"sum"`
	Odd         bool `json:"odd"`
	CallCorrect bool `json:"call_correct"`
}

// RollToss rolls two independent uniform 1-6 dice and compares the sum's
// parity to the declared call. Independence of the two draws keeps the
// outcome a fair 50/50 regardless of the call.
func RollToss(rng *rand.Rand, call TossCall) TossResult {
	die1 := rng.Intn(6) + 1
	die2 := rng.Intn(6) + 1
	sum := die1 + die2
	odd := sum%2 == 1

	return TossResult{
		Die1:        die1,
		Die2:        die2,
		Sum:         sum,
		Odd:         odd,
		CallCorrect: (call == CallOdd) == odd,
	}
}
