package dependency

import (
	"fmt"
	"testing"
)

var flattenTests = [...]struct {
	edges   []string
	ordered []string
}{
	{
		edges: []string{
			"enemy.o -> enemy.c",
			"main.o -> main.c",
			"mygame -> enemy.o",
			"mygame -> main.o",
			"mygame -> player.o",
			"player.o -> player.c",
		},
		ordered: []string{
			"enemy.c",
			"enemy.o",
			"main.c",
			"main.o",
			"player.c",
			"player.o",
			"mygame",
		},
	},
	{
		// Order shouldn't matter
		edges: []string{
			"player.o -> player.c",
			"enemy.o -> enemy.c",
			"mygame -> main.o",
			"main.o -> main.c",
			"mygame -> player.o",
			"mygame -> enemy.o",
		},
		ordered: []string{
			"enemy.c",
			"enemy.o",
			"main.c",
			"main.o",
			"player.c",
			"player.o",
			"mygame",
		},
	},
	{
		// Loops are not followed
		edges: []string{
			"Mildred -> Yancy",
			"Mrs -> Junior",
			"Mrs -> Phillip",
			"Phillip -> Yancy",
			"Yancy -> Junior",
			"Yancy -> Phillip",
		},
		ordered: []string{
			"Junior",
			"Phillip",
			"Yancy",
			"Mildred",
			"Mrs",
		},
	},
}

func TestFlatten(t *testing.T) {
	for _, tt := range flattenTests {
		var graph Graph
		for _, edge := range tt.edges {
			var target string
			var dep string
			if _, err := fmt.Sscanf(edge, "%s -> %s", &target, &dep); err != nil {
				panic("bad test edge " + edge)
			}
			graph.Add(target, dep)
		}
		var i int
		graph.Flatten(func(vertex string) {
			if i >= len(tt.ordered) {
				t.Fatalf("advanced past expected output with %s", vertex)
			}
			if tt.ordered[i] != vertex {
				t.Errorf("got %q, wanted %q", vertex, tt.ordered[i])
			} else {
				t.Log(vertex)
			}
			i++
		})
	}
}

func TestIsolatedTargets(t *testing.T) {
	var graph Graph
	graph.Add("urn:sir:in", "urn:sir:mockup")
	graph.Add("urn:standalone")
	graph.Add("urn:sir:mockup")

	var got []string
	graph.Flatten(func(vertex string) { got = append(got, vertex) })

	want := []string{"urn:sir:mockup", "urn:sir:in", "urn:standalone"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if graph.Len() != 3 {
		t.Errorf("Len() = %d, want 3", graph.Len())
	}
	if deps := graph.Dependencies("urn:sir:in"); len(deps) != 1 || deps[0] != "urn:sir:mockup" {
		t.Errorf("Dependencies = %v", deps)
	}
}
