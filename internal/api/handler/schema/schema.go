// Package schema valida corpos de requisição contra JSON Schemas embutidos
package schema

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed query_request.json
var queryRequestSchema []byte

// QueryRequest é o schema do corpo de POST /v1/query
var QueryRequest = mustCompile("query_request.json", queryRequestSchema)

type Validator struct {
	schema *jsonschema.Schema
}

func mustCompile(name string, raw []byte) *Validator {
	v, err := Compile(name, raw)
	if err != nil {
		panic(err)
	}
	return v
}

func Compile(name string, raw []byte) (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("schema %s inválido: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("erro ao registrar schema %s: %w", name, err)
	}

	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("erro ao compilar schema %s: %w", name, err)
	}

	return &Validator{schema: compiled}, nil
}

// Validate verifica o documento JSON bruto. O erro descreve cada violação encontrada.
func (v *Validator) Validate(body []byte) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("JSON malformado: %w", err)
	}
	return v.schema.Validate(instance)
}
