package pipeline

import (
	"bytes"
	"encoding/json"

	"github.com/t0mdavid-m/seqviz/pkg/cluster"
	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

// linkageDocument is the on-disk linkage input format.
type linkageDocument struct {
	Labels []string        `json:"labels"`
	Merges []cluster.Merge `json:"merges"`
}

// DetectInput populates the input fields of opts from raw file content.
// Newick is recognized by its leading parenthesis; everything else must
// be a JSON linkage document with "labels" and "merges" fields.
func DetectInput(data []byte, opts *Options) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "empty input")
	}

	if trimmed[0] == '(' {
		opts.Newick = string(trimmed)
		return nil
	}

	var doc linkageDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "input is neither Newick nor a linkage document")
	}
	if len(doc.Labels) == 0 {
		return errors.New(errors.ErrCodeInvalidLinkage, "linkage document has no labels")
	}
	opts.Labels = doc.Labels
	opts.Merges = doc.Merges
	return nil
}
