package stem

type Name string

const (
	Vocals        Name = "vocals"
	Accompaniment Name = "accompaniment"
	Drums         Name = "drums"
	Bass          Name = "bass"
	Piano         Name = "piano"
	Other         Name = "other"
)

// Layout fixes the arity and the canonical slot order of a Stems container.
// Implementations are empty marker types used only as type parameters.
type Layout interface {
	Names() []Name
	SplitType() string
}

var (
	_ Layout = TwoStems{}
	_ Layout = FourStems{}
	_ Layout = FiveStems{}
)

type TwoStems struct{}

func (TwoStems) Names() []Name {
	return []Name{Vocals, Accompaniment}
}

func (TwoStems) SplitType() string {
	return "2stems"
}

type FourStems struct{}

func (FourStems) Names() []Name {
	return []Name{Vocals, Drums, Bass, Other}
}

func (FourStems) SplitType() string {
	return "4stems"
}

type FiveStems struct{}

func (FiveStems) Names() []Name {
	return []Name{Vocals, Drums, Bass, Piano, Other}
}

func (FiveStems) SplitType() string {
	return "5stems"
}

func NamesOf[L Layout]() []Name {
	var layout L
	return layout.Names()
}

func CountOf[L Layout]() int {
	return len(NamesOf[L]())
}

func SplitTypeOf[L Layout]() string {
	var layout L
	return layout.SplitType()
}
