package browser

import (
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// applyResourceBlocking fails requests for the configured resource types.
func applyResourceBlocking(page *rod.Page, types []string) {
	blockSet := blockedTypes(types)
	if len(blockSet) == 0 {
		return
	}

	router := page.HijackRequests()
	router.MustAdd("*", func(ctx *rod.Hijack) {
		if blockSet[strings.ToLower(string(ctx.Request.Type()))] {
			ctx.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		ctx.ContinueRequest(&proto.FetchContinueRequest{})
	})
	go router.Run()
}

// blockedTypes maps config names to CDP resource types. Stylesheets are
// dropped from the set.
func blockedTypes(types []string) map[string]bool {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		name := strings.ToLower(strings.TrimSpace(t))
		switch name {
		case "images", "image":
			set["image"] = true
		case "fonts", "font":
			set["font"] = true
		case "media":
			set["media"] = true
		case "stylesheets", "stylesheet", "":
		default:
			set[name] = true
		}
	}
	return set
}
