package sirin

import (
	"github.com/alexandria-dm/sirxml/binding"
	"github.com/alexandria-dm/sirxml/mockup"
	"github.com/alexandria-dm/sirxml/xmlns"
)

func expect(data []byte, b xmlns.Binding, opts []binding.Option) (interface{}, error) {
	root, err := CreateFromDocument(data, opts...)
	if err != nil {
		return nil, err
	}
	if err := binding.Expect(root, b); err != nil {
		return nil, err
	}
	return root.Value, nil
}

// ParseOutputCatalog parses a document rooted at OutputCatalog.
func ParseOutputCatalog(data []byte, opts ...binding.Option) (*mockup.OutputCatalog, error) {
	v, err := expect(data, OutputCatalog, opts)
	if err != nil {
		return nil, err
	}
	return v.(*mockup.OutputCatalog), nil
}

// ParseInputImage parses a document rooted at InputImage.
func ParseInputImage(data []byte, opts ...binding.Option) (*mockup.NispImage, error) {
	v, err := expect(data, InputImage, opts)
	if err != nil {
		return nil, err
	}
	return v.(*mockup.NispImage), nil
}

// ParseInputCatalog parses a document rooted at InputCatalog.
func ParseInputCatalog(data []byte, opts ...binding.Option) (*mockup.ParentCatalog, error) {
	v, err := expect(data, InputCatalog, opts)
	if err != nil {
		return nil, err
	}
	return v.(*mockup.ParentCatalog), nil
}

// ParseInputParameters parses a document rooted at InputParameters.
func ParseInputParameters(data []byte, opts ...binding.Option) (*mockup.InputParameters, error) {
	v, err := expect(data, InputParameters, opts)
	if err != nil {
		return nil, err
	}
	return v.(*mockup.InputParameters), nil
}
