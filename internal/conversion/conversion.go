package conversion

// Fit controls how an image is resized into the target box.
type Fit string

const (
	// FitContain scales preserving aspect ratio so the image fits within the box.
	FitContain Fit = "contain"
	// FitCover scales preserving aspect ratio so the image fills the box, then
	// crops the centered excess to the exact dimensions.
	FitCover Fit = "cover"
	// FitCrop scales and crops to the exact box.
	FitCrop Fit = "crop"
	// FitFill stretches to the exact dimensions, ignoring aspect ratio.
	FitFill Fit = "fill"
)

// Conversion is an immutable definition of a named derivative. It is a value
// object resolved once per run; only the per-name outcome is persisted on the
// media record.
type Conversion struct {
	Name             string
	Width            int
	Height           int
	Quality          int
	Format           string
	Fit              Fit
	Queued           bool
	SkipOptimisation bool
	Extra            map[string]any
}

// Option mutates a Conversion during construction only.
type Option func(*Conversion)

// New builds a Conversion with the defaults quality=85, fit=contain, queued=true.
func New(name string, opts ...Option) Conversion {
	c := Conversion{
		Name:    name,
		Quality: 85,
		Fit:     FitContain,
		Queued:  true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func Width(w int) Option  { return func(c *Conversion) { c.Width = w } }
func Height(h int) Option { return func(c *Conversion) { c.Height = h } }

// Quality clamps to the 1–100 scale.
func Quality(q int) Option {
	return func(c *Conversion) {
		if q < 1 {
			q = 1
		}
		if q > 100 {
			q = 100
		}
		c.Quality = q
	}
}

// Format forces the output format; invalid fits are ignored, keeping the default.
func Format(f string) Option { return func(c *Conversion) { c.Format = f } }

func WithFit(f Fit) Option {
	return func(c *Conversion) {
		switch f {
		case FitContain, FitCover, FitCrop, FitFill:
			c.Fit = f
		}
	}
}

// NonQueued marks the conversion to run inline during ingest.
func NonQueued() Option { return func(c *Conversion) { c.Queued = false } }

// NonOptimised skips the post-encode optimisation pass.
func NonOptimised() Option { return func(c *Conversion) { c.SkipOptimisation = true } }

func Extra(key string, value any) Option {
	return func(c *Conversion) {
		if c.Extra == nil {
			c.Extra = map[string]any{}
		}
		c.Extra[key] = value
	}
}
