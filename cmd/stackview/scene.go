package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hnimtadd/stackview"
	"github.com/hnimtadd/stackview/logger"
	"github.com/hnimtadd/stackview/stack"
	"github.com/hnimtadd/stackview/stack/arbiter"
	"github.com/hnimtadd/stackview/stack/content"
	"github.com/hnimtadd/stackview/stack/geometry"
	"gopkg.in/yaml.v3"
)

// Scene describes a stack to lay out from a YAML file.
type Scene struct {
	Width    int          `yaml:"width"`
	Height   int          `yaml:"height"`
	Spacing  int          `yaml:"spacing"`
	Offset   int          `yaml:"offset"`
	Children []SceneChild `yaml:"children"`
}

// SceneChild is a text region when Text is set, a flow when Items is set
// and a fixed block otherwise.
type SceneChild struct {
	Name        string            `yaml:"name"`
	Text        string            `yaml:"text"`
	Items       []string          `yaml:"items"`
	Direction   string            `yaml:"direction"`
	Gap         int               `yaml:"gap"`
	Width       int               `yaml:"width"`
	Height      int               `yaml:"height"`
	Axis        string            `yaml:"axis"`
	Scrollables []SceneScrollable `yaml:"scrollables"`
}

// SceneScrollable is a region nested somewhere under a child.
type SceneScrollable struct {
	Name string `yaml:"name"`
	Axis string `yaml:"axis"`
}

func loadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return decodeScene(f)
}

func decodeScene(r io.Reader) (*Scene, error) {
	var scene Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&scene); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &scene, nil
}

// namedScrollable is a scene region that only records the flag it is given.
type namedScrollable struct {
	name    string
	axes    arbiter.Axis
	enabled bool
}

func (n *namedScrollable) ScrollAxes() arbiter.Axis      { return n.axes }
func (n *namedScrollable) SetScrollEnabled(enabled bool) { n.enabled = enabled }

// scrollableBlock is a fixed block that scrolls on its own.
type scrollableBlock struct {
	*content.Fixed
	namedScrollable
}

// built is a scene turned into a live stack view.
type built struct {
	view *stackview.StackView
	// Child names in stack order.
	names []string
	// Every arbitrated region keyed by the order it was attached in.
	regions []*region
}

type region struct {
	name       string
	owner      string
	scrollable arbiter.Scrollable
}

func (s *Scene) build(log logger.Logger) (*built, error) {
	view, err := stackview.NewStackView(stackview.Options{
		Cols:    s.Width,
		Rows:    s.Height,
		Spacing: s.Spacing,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}
	b := &built{view: view}
	for i, child := range s.Children {
		name := child.Name
		if name == "" {
			name = fmt.Sprintf("child-%d", i)
		}
		provider, scrollable := child.provider(s.Width)
		if err := view.AddChild(name, provider); err != nil {
			return nil, fmt.Errorf("add %s: %w", name, err)
		}
		b.names = append(b.names, name)
		if scrollable != nil {
			b.regions = append(b.regions, &region{name: name, owner: name, scrollable: scrollable})
		}
		for j, nested := range child.Scrollables {
			nestedName := nested.Name
			if nestedName == "" {
				nestedName = fmt.Sprintf("%s/scrollable-%d", name, j)
			}
			n := &namedScrollable{name: nestedName, axes: arbiter.ParseAxis(nested.Axis)}
			if err := view.Attach(name, n); err != nil {
				return nil, fmt.Errorf("attach %s: %w", nestedName, err)
			}
			b.regions = append(b.regions, &region{name: nestedName, owner: name, scrollable: n})
		}
	}
	view.ScrollTo(s.Offset)
	return b, nil
}

func (c SceneChild) provider(width int) (stack.ContentSizeProvider, arbiter.Scrollable) {
	switch {
	case c.Text != "":
		t := content.NewText(c.Text)
		if axes := arbiter.ParseAxis(c.Axis); axes != arbiter.AxisNone {
			t.SetAxes(axes)
		}
		return t, t
	case len(c.Items) > 0:
		f := content.NewFlow(arbiter.ParseAxis(c.Direction), c.Gap, c.Items...)
		return f, f
	}
	if c.Width == 0 {
		c.Width = width
	}
	fixed := content.NewFixed(geometry.NewSize(c.Width, c.Height))
	if c.Axis == "" {
		return fixed, nil
	}
	block := &scrollableBlock{
		Fixed:           fixed,
		namedScrollable: namedScrollable{name: c.Name, axes: arbiter.ParseAxis(c.Axis)},
	}
	return block, block
}
