package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Completed successfully
	ExitDataError = 1 // Dataset failed validation
	ExitError     = 2 // Configuration or runtime error
)

// DatasetError indicates the tool ran correctly but the supplied dataset
// was rejected (too few valid examples). Environment failures such as a
// missing file are plain errors and exit with ExitError.
type DatasetError struct {
	Message string
}

func (e *DatasetError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var datasetErr *DatasetError
		if errors.As(err, &datasetErr) {
			os.Exit(ExitDataError)
		}

		os.Exit(ExitError)
	}
}
