package deps

import (
	"context"
	"fmt"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"
)

// StandaloneYtdlp returns a Fallback that downloads the self-contained yt-dlp
// release binary into the user cache when pip cannot install the package.
func StandaloneYtdlp(logger *zap.Logger) Fallback {
	return func(ctx context.Context) error {
		resolved, err := ytdlp.Install(ctx, nil)
		if err != nil {
			return fmt.Errorf("install standalone yt-dlp: %w", err)
		}
		if logger != nil {
			logger.Info("standalone yt-dlp ready",
				zap.String("executable", resolved.Executable),
				zap.String("version", resolved.Version))
		}
		return nil
	}
}
