// Package catalog reads machine catalogs used to seed the store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"machineshop/internal/model"
	"machineshop/internal/service"
)

// File is the YAML layout:
//
//	machines:
//	  - name: Lathe
//	    price: 1200
//	    quantity: 3
type File struct {
	Machines []service.MachineInput `yaml:"machines"`
}

func Load(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &f, nil
}

type machineCreator interface {
	Create(ctx context.Context, in service.MachineInput) (*model.Machine, error)
}

// Seed creates every machine in f. It stops at the first invalid entry and
// reports its index; machines created before it are kept.
func Seed(ctx context.Context, machines machineCreator, f *File) ([]model.Machine, error) {
	created := make([]model.Machine, 0, len(f.Machines))
	for i, in := range f.Machines {
		m, err := machines.Create(ctx, in)
		if err != nil {
			return created, fmt.Errorf("machine #%d: %w", i+1, err)
		}
		created = append(created, *m)
	}
	return created, nil
}
