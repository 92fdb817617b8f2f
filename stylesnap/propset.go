package stylesnap

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Declaration is a single property: value pair.
type Declaration struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PropertySet is a bag of resolved style properties for one node.
// Iteration follows insertion order so every consumer sees the same
// sequence; setting an existing name replaces its value in place.
// The zero value is an empty set ready to use.
type PropertySet struct {
	decls []Declaration
	index map[string]int
}

// NewPropertySet builds a set from alternating name, value arguments.
// A trailing name without a value is ignored.
func NewPropertySet(pairs ...string) PropertySet {
	var p PropertySet
	for i := 0; i+1 < len(pairs); i += 2 {
		p.Set(pairs[i], pairs[i+1])
	}
	return p
}

// Len returns the number of properties.
func (p PropertySet) Len() int { return len(p.decls) }

// Get returns the value for name.
func (p PropertySet) Get(name string) (string, bool) {
	i, ok := p.index[name]
	if !ok {
		return "", false
	}
	return p.decls[i].Value, true
}

// Has reports whether name is present.
func (p PropertySet) Has(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Set adds name or replaces its value.
func (p *PropertySet) Set(name, value string) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[name]; ok {
		p.decls[i].Value = value
		return
	}
	p.index[name] = len(p.decls)
	p.decls = append(p.decls, Declaration{Name: name, Value: value})
}

// Delete removes name if present.
func (p *PropertySet) Delete(name string) {
	i, ok := p.index[name]
	if !ok {
		return
	}
	p.decls = append(p.decls[:i], p.decls[i+1:]...)
	delete(p.index, name)
	for j := i; j < len(p.decls); j++ {
		p.index[p.decls[j].Name] = j
	}
}

// Declarations returns a copy of the properties in insertion order.
func (p PropertySet) Declarations() []Declaration {
	out := make([]Declaration, len(p.decls))
	copy(out, p.decls)
	return out
}

// Clone returns an independent copy.
func (p PropertySet) Clone() PropertySet {
	var c PropertySet
	for _, d := range p.decls {
		c.Set(d.Name, d.Value)
	}
	return c
}

// MarshalJSON encodes the set as a JSON object in insertion order.
func (p PropertySet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range p.decls {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKV(&buf, d.Name, d.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values, keeping key order.
// null decodes to an empty set.
func (p *PropertySet) UnmarshalJSON(data []byte) error {
	*p = PropertySet{}
	dec := json.NewDecoder(bytes.NewReader(data))
	ok, err := openObject(dec)
	if err != nil || !ok {
		return err
	}
	for dec.More() {
		name, err := objectKey(dec)
		if err != nil {
			return err
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("stylesnap: property %q: %w", name, err)
		}
		p.Set(name, value)
	}
	_, err = dec.Token()
	return err
}

func writeKV(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// openObject consumes the opening brace. It returns false for a JSON null.
func openObject(dec *json.Decoder) (bool, error) {
	tok, err := dec.Token()
	if err != nil {
		return false, err
	}
	if tok == nil {
		return false, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return false, fmt.Errorf("stylesnap: expected JSON object, got %v", tok)
	}
	return true, nil
}

func objectKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("stylesnap: expected object key, got %v", tok)
	}
	return key, nil
}
