package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used on the command line
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"` // One line summary
}

type builtinScene struct {
	info    SceneInfo
	factory func() *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Reference Box",
			Description: "Mirror, glass and diffuse spheres lit by a ceiling sphere inside a colored box",
		},
		factory: NewDefaultScene,
	},
	"corridor": {
		info: SceneInfo{
			ID:          "corridor",
			DisplayName: "Endless Corridor",
			Description: "Two facing diffuse planes with no light, exercises roulette termination",
		},
		factory: NewCorridorScene,
	},
}

// ListBuiltinScenes returns the built-in scenes sorted by ID
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		scenes = append(scenes, s.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewBuiltinScene creates the built-in scene with the given ID
func NewBuiltinScene(id string) (*Scene, error) {
	s, ok := builtinScenes[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return s.factory(), nil
}
