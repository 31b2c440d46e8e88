package dto

type CopyInput struct {
	Text string
	X    int
	Y    int
}
