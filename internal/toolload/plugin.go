//go:build (linux || darwin || freebsd) && cgo

package toolload

import "plugin"

// PluginLoader opens Go plugins built with -buildmode=plugin.
type PluginLoader struct{}

func NewHostLoader() Loader {
	return PluginLoader{}
}

func (PluginLoader) Open(path string) (Module, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return pluginModule{p}, nil
}

type pluginModule struct {
	p *plugin.Plugin
}

func (m pluginModule) Lookup(name string) (any, error) {
	return m.p.Lookup(name)
}
