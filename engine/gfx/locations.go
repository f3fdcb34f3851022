package gfx

// LocationTable caches uniform and attribute slots resolved once after link.
type LocationTable struct {
	Uniforms map[string]Location
	Attribs  map[string]Location
}

// Resolve looks up every name and fails on the first one the program does not expose.
func (p *Program) Resolve(uniforms, attribs []string) (LocationTable, error) {
	t := LocationTable{
		Uniforms: make(map[string]Location, len(uniforms)),
		Attribs:  make(map[string]Location, len(attribs)),
	}
	for _, name := range uniforms {
		loc := p.UniformLocation(name)
		if !loc.Valid() {
			return LocationTable{}, errorf(KindLink, "shader program", nil, "uniform %q not found", name)
		}
		t.Uniforms[name] = loc
	}
	for _, name := range attribs {
		loc := p.AttribLocation(name)
		if !loc.Valid() {
			return LocationTable{}, errorf(KindLink, "shader program", nil, "attribute %q not found", name)
		}
		t.Attribs[name] = loc
	}
	return t, nil
}

// Uniform returns the cached slot, NoLocation if it was never resolved.
func (t LocationTable) Uniform(name string) Location {
	if loc, ok := t.Uniforms[name]; ok {
		return loc
	}
	return NoLocation
}

// Attrib returns the cached slot, NoLocation if it was never resolved.
func (t LocationTable) Attrib(name string) Location {
	if loc, ok := t.Attribs[name]; ok {
		return loc
	}
	return NoLocation
}
