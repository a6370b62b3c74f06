package viewer

import (
	"path"
	"strings"
)

// IsPaginated reports whether an asset path routes to the paginated viewer.
// Only a .pdf extension (any case) does; everything else is a static image.
func IsPaginated(assetPath string) bool {
	if i := strings.IndexAny(assetPath, "?#"); i >= 0 {
		assetPath = assetPath[:i]
	}
	return strings.EqualFold(path.Ext(assetPath), ".pdf")
}
