package scenes

import (
	"github.com/Fannzxyl/kotoba-test/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene
