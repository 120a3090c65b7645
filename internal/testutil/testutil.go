// Package testutil provides posterior fixtures for tests.
//
// Fixtures are YAML documents under testdata/, embedded at build time:
//
//	groups:
//	  - name: posterior
//	    coords:
//	      school:
//	        strings: [Choate, Deerfield]
//	    variables:
//	      - name: theta
//	        shape: [2, 3, 2]
//	        dims: [school]
//	        data: [...]
package testutil

import (
	"bytes"
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/tidydraws/posterior"
)

//go:embed testdata/*.yaml
var fixtures embed.FS

// Fixture names.
const (
	EightSchools  = "eight_schools"
	Heterogeneous = "heterogeneous"
)

type fixtureFile struct {
	Groups []fixtureGroup `yaml:"groups"`
}

type fixtureGroup struct {
	Name      string                   `yaml:"name"`
	Coords    map[string]fixtureCoords `yaml:"coords,omitempty"`
	Variables []fixtureVariable        `yaml:"variables"`
}

type fixtureCoords struct {
	Ints    []int64  `yaml:"ints,omitempty"`
	Strings []string `yaml:"strings,omitempty"`
}

type fixtureVariable struct {
	Name  string    `yaml:"name"`
	Shape []int     `yaml:"shape"`
	Dims  []string  `yaml:"dims,omitempty"`
	Data  []float64 `yaml:"data"`
}

// Load builds the named fixture.
func Load(name string) (*posterior.InferenceData, error) {
	raw, err := fixtures.ReadFile("testdata/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %q: %w", name, err)
	}

	var file fixtureFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %q: %w", name, err)
	}

	data := posterior.New()
	for _, fg := range file.Groups {
		vars := make([]*posterior.Variable, 0, len(fg.Variables))
		for _, fv := range fg.Variables {
			v, err := posterior.NewVariable(fv.Name, fv.Shape, fv.Data, fv.Dims...)
			if err != nil {
				return nil, fmt.Errorf("fixture %q: %w", name, err)
			}
			vars = append(vars, v)
		}

		g, err := data.AddGroup(fg.Name, vars...)
		if err != nil {
			return nil, fmt.Errorf("fixture %q: %w", name, err)
		}

		for dim, fc := range fg.Coords {
			c := posterior.IntCoords(fc.Ints...)
			if fc.Strings != nil {
				c = posterior.StringCoords(fc.Strings...)
			}
			if err := g.SetCoords(dim, c); err != nil {
				return nil, fmt.Errorf("fixture %q: %w", name, err)
			}
		}
	}

	return data, nil
}

// MustLoad is Load for test setup; it panics on error.
func MustLoad(name string) *posterior.InferenceData {
	data, err := Load(name)
	if err != nil {
		panic(err)
	}

	return data
}

// Synthetic builds a posterior group with chains x draws samples and three
// variables: scalar mu, theta over three schools and sigma over a 2x2 grid.
// Values encode their position, so rows can be traced back: mu is the
// sample number c*draws+d, theta[k] is 10*mu+k and sigma[i][j] is
// 100*mu+10*i+j.
func Synthetic(chains, draws int) *posterior.InferenceData {
	n := chains * draws
	mu := make([]float64, 0, n)
	theta := make([]float64, 0, n*3)
	sigma := make([]float64, 0, n*4)

	for s := 0; s < n; s++ {
		base := float64(s)
		mu = append(mu, base)
		for k := 0; k < 3; k++ {
			theta = append(theta, 10*base+float64(k))
		}
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				sigma = append(sigma, 100*base+float64(10*i+j))
			}
		}
	}

	vars := []*posterior.Variable{
		must(posterior.NewVariable("mu", []int{chains, draws}, mu)),
		must(posterior.NewVariable("theta", []int{chains, draws, 3}, theta, "school")),
		must(posterior.NewVariable("sigma", []int{chains, draws, 2, 2}, sigma)),
	}

	data := posterior.New()
	if _, err := data.AddGroup(posterior.GroupPosterior, vars...); err != nil {
		panic(err)
	}

	return data
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}
