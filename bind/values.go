package bind

// Secret is a coerced secret string. Its String method redacts the value
// so it never leaks through logging; callers that need the real value use
// Reveal.
type Secret string

// String implements fmt.Stringer with a redacted form.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "**********"
}

// Reveal returns the underlying secret value.
func (s Secret) Reveal() string {
	return string(s)
}

// Path is a coerced filesystem path input.
type Path string

// File is a coerced file reference: a URL or local path naming the content.
type File struct {
	URI string
}

// Image is a coerced image reference.
type Image struct {
	URI string
}
