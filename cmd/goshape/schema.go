package main

import (
	"errors"
	"fmt"
	"os"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/openapi"
	"github.com/reoring/goshape/registry"
)

var errNoSchemas = errors.New("no schema document configured (use --schemas or GOSHAPE_SCHEMAS)")

// loadSchema returns the named schema of the configured document, or its root
// schema when name is empty.
func (a *app) loadSchema(name string) (goshape.Schema, error) {
	if a.cfg.Schemas == "" {
		return nil, errNoSchemas
	}
	if name == "" {
		data, err := os.ReadFile(a.cfg.Schemas)
		if err != nil {
			return nil, fmt.Errorf("read schema document: %w", err)
		}
		s, diag, err := openapi.Import(data, openapi.Options{})
		if err != nil {
			return nil, err
		}
		for _, w := range diag.Warnings() {
			a.logger.Warn().Msg(w)
		}
		return s, nil
	}
	reg, err := a.openRegistry()
	if err != nil {
		return nil, err
	}
	return reg.Get(name)
}

func (a *app) openRegistry() (*registry.Registry, error) {
	if a.cfg.Schemas == "" {
		return nil, errNoSchemas
	}
	return registry.Open(a.cfg.Schemas, openapi.Options{}, a.logger)
}
