package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// loadImage returns the content of the image file and a function to release it.
// With useMmap the file is mapped read only instead of copied, which ignores fs.
func loadImage(fs afero.Fs, name string, useMmap bool) ([]byte, func() error, error) {
	if useMmap {
		image, release, err := mmapImage(name)
		if err != nil {
			return nil, nil, fmt.Errorf("mapping image %q: %w", name, err)
		}

		log.WithField("image", name).
			WithField("size", len(image)).
			Debug("mapped image")
		return image, release, nil
	}

	image, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, nil, fmt.Errorf("reading image %q: %w", name, err)
	}

	log.WithField("image", name).
		WithField("size", len(image)).
		Debug("read image")
	return image, func() error { return nil }, nil
}
