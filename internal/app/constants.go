package app

// Ball number bounds for both batsman and bowler submissions.
const (
	MinBallNumber = 1
	MaxBallNumber = 6
)
