package models

// BackgroundType tells how PageBackgroundID is interpreted.
type BackgroundType string

const (
	BackgroundGradient BackgroundType = "gradient"
	BackgroundImage    BackgroundType = "image"
)

// DefaultGradient is the gradient shown when no background was chosen.
const DefaultGradient = "gradient-pink-purple"

type Gradient struct {
	ID   string
	Name string
}

// Gradients is the fixed catalogue of preset page backgrounds.
var Gradients = []Gradient{
	{ID: "gradient-pink-purple", Name: "Pink Purple"},
	{ID: "gradient-blue-teal", Name: "Blue Teal"},
	{ID: "gradient-warm-sunset", Name: "Warm Sunset"},
}

func IsGradient(id string) bool {
	for _, g := range Gradients {
		if g.ID == id {
			return true
		}
	}
	return false
}

// Keyspace names one of the two disjoint image collections.
type Keyspace string

const (
	KeyspaceFlyer      Keyspace = "flyer-images"
	KeyspaceBackground Keyspace = "background-images"
)

func (k Keyspace) Valid() bool {
	return k == KeyspaceFlyer || k == KeyspaceBackground
}
