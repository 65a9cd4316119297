package processor

import "context"

// Processor turns one dropped-in audio file into a chart PDF in the
// output directory.
type Processor interface {
	Process(ctx context.Context, audioPath string) error
}
