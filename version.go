package assetpipe

import "fmt"

// These constants follow semantic versioning 2.0.0.
// see: http://semver.org
var (
	major = 0
	minor = 3
	patch = 1
	meta  = ""
)

func StringVersion() string {
	v := fmt.Sprintf("%d.%d.%d", major, minor, patch)

	if meta != "" {
		v = fmt.Sprintf("%s-%s", v, meta)
	}

	return v
}
