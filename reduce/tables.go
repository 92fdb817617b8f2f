package reduce

// These tables are read-only after package init. Reducers share them.

// browserDefaults lists, per property, the computed values an unstyled
// element reports. Values are lowercase and trimmed.
var browserDefaults = map[string][]string{
	"display":             {"inline", "block"},
	"position":            {"static"},
	"visibility":          {"visible"},
	"opacity":             {"1"},
	"overflow":            {"visible"},
	"overflow-x":          {"visible"},
	"overflow-y":          {"visible"},
	"float":               {"none"},
	"clear":               {"none"},
	"z-index":             {"auto"},
	"vertical-align":      {"baseline"},
	"text-align":          {"start", "left"},
	"text-decoration":     {"none"},
	"text-transform":      {"none"},
	"white-space":         {"normal"},
	"word-break":          {"normal"},
	"word-wrap":           {"normal"},
	"font-style":          {"normal"},
	"font-weight":         {"400", "normal"},
	"font-stretch":        {"normal"},
	"letter-spacing":      {"normal"},
	"line-height":         {"normal"},
	"list-style-type":     {"disc", "none"},
	"list-style-position": {"outside"},
	"border-style":        {"none"},
	"border-width":        {"0px"},
	"border-color":        {"currentcolor"},
	"background-color":    {"transparent", "rgba(0, 0, 0, 0)"},
	"background-image":    {"none"},
	"background-repeat":   {"repeat"},
	"background-position": {"0% 0%", "0px 0px"},
	"background-size":     {"auto", "auto auto"},
	"cursor":              {"auto"},
	"pointer-events":      {"auto"},
	"box-shadow":          {"none"},
	"text-shadow":         {"none"},
	"transform":           {"none"},
	"transition":          {"none", "all 0s ease 0s"},
	"animation":           {"none"},
	"filter":              {"none"},
	"backdrop-filter":     {"none"},
	"mix-blend-mode":      {"normal"},
	"isolation":           {"auto"},
}

// inheritedProperties inherit by default in CSS.
var inheritedProperties = set(
	"color",
	"font-family",
	"font-size",
	"font-style",
	"font-weight",
	"font-variant",
	"letter-spacing",
	"line-height",
	"text-align",
	"text-indent",
	"text-transform",
	"white-space",
	"word-spacing",
	"direction",
	"visibility",
	"cursor",
	"list-style",
	"list-style-type",
	"list-style-position",
	"list-style-image",
	"quotes",
)

// vendorPrefixes mark engine-specific property names.
var vendorPrefixes = []string{"-webkit-", "-moz-", "-ms-", "-o-"}

// essentialProperties are always retained once they survive filtering:
// layout, box model, typography and the visual properties a UI component
// depends on.
var essentialProperties = set(
	"display",
	"position",
	"top",
	"right",
	"bottom",
	"left",
	"width",
	"height",
	"min-width",
	"min-height",
	"max-width",
	"max-height",
	"margin",
	"margin-top",
	"margin-right",
	"margin-bottom",
	"margin-left",
	"padding",
	"padding-top",
	"padding-right",
	"padding-bottom",
	"padding-left",
	"flex",
	"flex-direction",
	"flex-wrap",
	"flex-grow",
	"flex-shrink",
	"flex-basis",
	"justify-content",
	"align-items",
	"align-self",
	"gap",
	"grid",
	"grid-template-columns",
	"grid-template-rows",
	"grid-column",
	"grid-row",
	"background-color",
	"background-image",
	"background-size",
	"background-position",
	"border",
	"border-radius",
	"color",
	"font-family",
	"font-size",
	"font-weight",
	"line-height",
	"text-align",
	"box-shadow",
	"transform",
	"transition",
	"opacity",
	"z-index",
	"overflow",
)

// shorthandGroups fold four longhands into one shorthand. Members are in
// CSS clockwise order (top, right, bottom, left; corners from top-left).
var shorthandGroups = []struct {
	shorthand string
	members   [4]string
}{
	{"margin", [4]string{"margin-top", "margin-right", "margin-bottom", "margin-left"}},
	{"padding", [4]string{"padding-top", "padding-right", "padding-bottom", "padding-left"}},
	{"border-radius", [4]string{
		"border-top-left-radius",
		"border-top-right-radius",
		"border-bottom-right-radius",
		"border-bottom-left-radius",
	}},
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
