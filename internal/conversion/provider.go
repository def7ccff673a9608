package conversion

// Provider resolves the conversion definitions applicable to an owner type.
// The source behaviour let each owning entity override the list; here it is a
// strategy lookup keyed by owner type with a process-wide default.
type Provider interface {
	ConversionsFor(ownerType string) []Conversion
}

// StaticProvider serves a fixed default list with optional per-owner-type overrides.
type StaticProvider struct {
	defaults []Conversion
	perOwner map[string][]Conversion
}

var _ Provider = (*StaticProvider)(nil)

func NewStaticProvider(defaults []Conversion) *StaticProvider {
	return &StaticProvider{defaults: defaults, perOwner: map[string][]Conversion{}}
}

// Register replaces the list for one owner type. Call during wiring, before use.
func (p *StaticProvider) Register(ownerType string, conversions []Conversion) {
	p.perOwner[ownerType] = conversions
}

func (p *StaticProvider) ConversionsFor(ownerType string) []Conversion {
	if cs, ok := p.perOwner[ownerType]; ok {
		return cs
	}
	return p.defaults
}

// Defaults returns the stock conversion set: a square cropped thumbnail and two
// proportional sizes, all webp.
func Defaults() []Conversion {
	return []Conversion{
		New("thumb", Width(300), Height(300), Quality(80), Format("webp"), WithFit(FitCrop)),
		New("medium", Width(800), Height(600), Quality(85), Format("webp"), WithFit(FitContain)),
		New("large", Width(1920), Height(1080), Quality(90), Format("webp"), WithFit(FitContain)),
	}
}
