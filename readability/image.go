package readability

import (
	"strings"

	"golang.org/x/net/html"
)

// fixLazyImages promotes lazy-loading attributes to src and srcset, and
// drops tiny base64 placeholders when a real source is available.
func fixLazyImages(root *html.Node) {
	for _, elem := range getAllNodesWithTag(root, "img", "picture", "figure") {
		src := getAttribute(elem, "src")

		if tagName(elem) == "img" && src != "" && rxB64DataURL.MatchString(src) {
			mime := rxB64DataURL.FindStringSubmatch(src)[1]
			// SVG placeholders can be meaningful at any size.
			if mime != "image/svg+xml" && hasOtherImageSource(elem) {
				if loc := rxBase64.FindStringIndex(src); loc != nil {
					if len(src)-(loc[0]+7) < 133 {
						removeAttribute(elem, "src")
						src = ""
					}
				}
			}
		}

		if tagName(elem) == "img" {
			srcset := getAttribute(elem, "srcset")
			if (src != "" || (srcset != "" && srcset != "null")) &&
				!strings.Contains(strings.ToLower(className(elem)), "lazy") {
				continue
			}
		}

		for _, attr := range elem.Attr {
			switch attr.Key {
			case "src", "srcset", "alt":
				continue
			}
			var copyTo string
			switch {
			case rxLazySrcset.MatchString(attr.Val):
				copyTo = "srcset"
			case rxLazySrc.MatchString(attr.Val):
				copyTo = "src"
			default:
				continue
			}
			switch tagName(elem) {
			case "img", "picture":
				setAttribute(elem, copyTo, attr.Val)
			case "figure":
				if len(getAllNodesWithTag(elem, "img", "picture")) == 0 {
					img := createElement("img")
					setAttribute(img, copyTo, attr.Val)
					elem.AppendChild(img)
				}
			}
		}
	}
}

// hasOtherImageSource reports whether an attribute other than src looks like
// an image URL.
func hasOtherImageSource(elem *html.Node) bool {
	for _, attr := range elem.Attr {
		if attr.Key != "src" && rxImageExtension.MatchString(attr.Val) {
			return true
		}
	}
	return false
}
