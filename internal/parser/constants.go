package parser

const (
	// AnnotationPrefix is the prefix used for all axon annotations
	AnnotationPrefix = "axon::"

	// AnnotationTypeRoute marks a handler as an HTTP route
	AnnotationTypeRoute = "route"

	// goFileSuffix and testFileSuffix select the files a directory scan reads
	goFileSuffix   = ".go"
	testFileSuffix = "_test.go"
)
