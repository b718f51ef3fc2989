package pianoroll

// Tool is the exclusive left-button tool of the notes canvas
type Tool uint8

const (
	ToolCursor Tool = iota
	ToolPen
	ToolPenPlus
	ToolEraser
	ToolDrawPitch
	ToolKnife
)

var toolNames = map[Tool]string{
	ToolCursor:    "cursor",
	ToolPen:       "pen",
	ToolPenPlus:   "pen+",
	ToolEraser:    "eraser",
	ToolDrawPitch: "draw pitch",
	ToolKnife:     "knife",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseToolKey maps the tool-select command parameter ("1".."5", "2+") to a tool
func ParseToolKey(key string) (Tool, bool) {
	switch key {
	case "1":
		return ToolCursor, true
	case "2":
		return ToolPen, true
	case "2+":
		return ToolPenPlus, true
	case "3":
		return ToolEraser, true
	case "4":
		return ToolDrawPitch, true
	case "5":
		return ToolKnife, true
	}
	return ToolCursor, false
}
