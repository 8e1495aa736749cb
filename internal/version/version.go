package version

import "fmt"

// Version/Commit 可在构建时通过 -ldflags 注入，例如
// -X github.com/purgehub/purgehub/internal/version.Commit=$(git rev-parse --short HEAD)。
var (
	Version = "0.1.0"
	Commit  = "dev"
)

// Full 返回便于 CLI 打印的完整版本信息。
func Full() string {
	return fmt.Sprintf("purgehub %s (%s)", Version, Commit)
}
