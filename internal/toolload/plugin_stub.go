//go:build !((linux || darwin || freebsd) && cgo)

package toolload

type unsupportedLoader struct{}

func NewHostLoader() Loader {
	return unsupportedLoader{}
}

func (unsupportedLoader) Open(string) (Module, error) {
	return nil, ErrUnsupported
}
