package core

// Color identifies the role of a screen cell. The platform decides how each
// role is drawn, so game code never deals with terminal color codes.
type Color uint8

// Palette roles used by the game renderers.
const (
	ColorDefault Color = iota
	ColorText          // Body text
	ColorAccent        // Titles and highlighted menu entries
	ColorDim           // Hints and separators
	ColorWall          // Maze walls
	ColorWater         // Flooded floor
	ColorPlayer        // Player above water
	ColorDiver         // Player below the surface
	ColorBubble        // Uncollected air bubble
	ColorDrainOff      // Inactive drain switch
	ColorDrainOn       // Activated drain switch
	ColorExit          // Maze exit
	ColorWarning       // Low oxygen, game over
	ColorSuccess       // Escape banner
)
