package shape

// CopyPolicy controls whether constructors take a private copy of
// caller-provided storage or adopt it in place.
type CopyPolicy int

const (
	// CopyData always copies caller storage. This is the default.
	CopyData CopyPolicy = iota
	// ShareLenient adopts caller storage when its memory layout allows
	// it, and otherwise falls back to a copy with a logged warning.
	ShareLenient
	// ShareStrict adopts caller storage and fails when the memory
	// layout prevents adoption.
	ShareStrict
)

func (p CopyPolicy) String() string {
	switch p {
	case CopyData:
		return "copy"
	case ShareLenient:
		return "share-lenient"
	case ShareStrict:
		return "share-strict"
	default:
		return "unknown"
	}
}

// Option configures point cloud and mesh construction.
type Option func(*options)

type options struct {
	policy CopyPolicy
	tri    Triangulator
}

func defaultOptions() options {
	return options{policy: CopyData}
}

// WithCopyPolicy selects how constructors treat caller-provided storage.
func WithCopyPolicy(p CopyPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithTriangulator overrides the triangulator used when a mesh is built
// without an explicit triangle list. The default is DefaultTriangulator.
func WithTriangulator(t Triangulator) Option {
	return func(o *options) { o.tri = t }
}
