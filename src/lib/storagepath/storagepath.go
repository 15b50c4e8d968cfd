package storagepath

import "fmt"

type Generator struct {
	Host   string
	Bucket string
}

func (g Generator) GeneratePath(requestID string, leafPath string) string {
	return fmt.Sprintf("%s/%s/%s/%s", g.Host, g.Bucket, requestID, leafPath)
}

func (g Generator) SourcePath(requestID string, extension string) string {
	return g.GeneratePath(requestID, fmt.Sprintf("source/source%s", extension))
}

func (g Generator) StemDir(requestID string, splitType string) string {
	return g.GeneratePath(requestID, splitType)
}
