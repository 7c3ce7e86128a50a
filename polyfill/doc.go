// Package polyfill installs the codec constructors into a Scope under their
// conventional names, only where a name is not already defined.
//
//	scope := polyfill.NewScope()
//	installed, err := polyfill.Install(scope)
//
//	v, _ := scope.Lookup(polyfill.TextDecoderName)
//	newDecoder := v.(polyfill.TextDecoderFunc)
//	dec, err := newDecoder("utf-8")
//
// A host that already provides one of the names keeps its own definition.
package polyfill
