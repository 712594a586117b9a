package cli

const (
	FlagHome          = "home"
	FlagStrict        = "strict"
	FlagMaxObjectSize = "max-object-size"
)
