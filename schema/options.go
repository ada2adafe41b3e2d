package schema

// Option configures a Schema at build time.
type Option func(*options)

type options struct {
	rejectTrailing bool
}

// RejectTrailing makes Parse fail with an invalid_data error when any bit
// after the last field is set. By default trailing bits are ignored.
func RejectTrailing() Option {
	return func(o *options) {
		o.rejectTrailing = true
	}
}
