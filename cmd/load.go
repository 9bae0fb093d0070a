package cmd

import (
	"os"

	"github.com/cottand/genrew/protograph"
	"github.com/cottand/genrew/signature"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// signatureFile is the YAML surface of a generic signature:
//
//	protocols:
//	  - name: P
//	    associatedTypes: [A]
//	  - name: Q
//	    inherits: [P]
//	params: [T, U]
//	requirements:
//	  - conformance: {subject: T, protocol: Q}
//	  - sameType: {left: T.A, right: U.A}
//	  - layout: {subject: U, layout: AnyObject}
type signatureFile struct {
	Protocols    []protocolFile    `yaml:"protocols"`
	Params       []string          `yaml:"params"`
	Requirements []requirementFile `yaml:"requirements"`
}

type protocolFile struct {
	Name            string   `yaml:"name"`
	Inherits        []string `yaml:"inherits"`
	AssociatedTypes []string `yaml:"associatedTypes"`
}

type requirementFile struct {
	Conformance *conformanceFile `yaml:"conformance"`
	SameType    *sameTypeFile    `yaml:"sameType"`
	Layout      *layoutFile      `yaml:"layout"`
}

type conformanceFile struct {
	Subject  string `yaml:"subject"`
	Protocol string `yaml:"protocol"`
}

type sameTypeFile struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

type layoutFile struct {
	Subject string `yaml:"subject"`
	Layout  string `yaml:"layout"`
}

func loadSignature(path string) (*signature.Signature, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	var file signatureFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}

	decls := make([]protograph.Decl, 0, len(file.Protocols))
	for _, proto := range file.Protocols {
		decls = append(decls, protograph.Decl{
			Name:            proto.Name,
			Inherits:        proto.Inherits,
			AssociatedTypes: proto.AssociatedTypes,
		})
	}
	graph, err := protograph.New(decls)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid protocol declarations in %s", path)
	}

	sig := &signature.Signature{
		Params: file.Params,
		Graph:  graph,
	}
	for i, requirement := range file.Requirements {
		lowered, err := parseRequirement(requirement)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid requirement %d in %s", i, path)
		}
		sig.Requirements = append(sig.Requirements, lowered)
	}
	return sig, nil
}

func parseRequirement(file requirementFile) (signature.Requirement, error) {
	switch {
	case file.Conformance != nil:
		subject, err := signature.ParseTypePath(file.Conformance.Subject)
		if err != nil {
			return nil, err
		}
		return signature.Conformance{Subject: subject, Protocol: file.Conformance.Protocol}, nil
	case file.SameType != nil:
		left, err := signature.ParseTypePath(file.SameType.Left)
		if err != nil {
			return nil, err
		}
		right, err := signature.ParseTypePath(file.SameType.Right)
		if err != nil {
			return nil, err
		}
		return signature.SameType{Left: left, Right: right}, nil
	case file.Layout != nil:
		subject, err := signature.ParseTypePath(file.Layout.Subject)
		if err != nil {
			return nil, err
		}
		layout, err := signature.ParseLayout(file.Layout.Layout)
		if err != nil {
			return nil, err
		}
		return signature.LayoutRequirement{Subject: subject, Layout: layout}, nil
	}
	return nil, errors.New("requirement must be one of conformance, sameType, layout")
}
