// Package svg models the vector document a starfield is drawn from.
//
// A [Document] is a small typed tree: a declared canvas size with a physical
// unit, exactly one background [Rect], and an ordered list of [Circle]
// elements. The tree is built in memory and only turned into markup at the
// end with [Document.Encode] or [Document.Marshal], so attribute values are
// always escaped and the "one background plus N circles" shape holds by
// construction.
//
// # Markup
//
// The serialized form is plain SVG 1.1:
//
//	<svg xmlns="http://www.w3.org/2000/svg" version="1.1"
//	     width="2000mm" height="12000mm" viewBox="0 0 2000 12000">
//	  <rect x="0" y="0" width="2000" height="12000" fill="#191970" fill-opacity="1"></rect>
//	  <circle cx="512.3" cy="88.1" r="2.41" fill="#ffffff" fill-opacity="0.83" stroke="none"></circle>
//	  ...
//	</svg>
//
// Coordinates are user units; the viewBox maps one user unit to one declared
// unit, so the document is resolution independent. The exact markup is an
// implementation detail and may change between versions.
//
// # Parsing
//
// [Parse] and [Decode] read markup of the same shape back into a Document.
// They accept width/height with or without a unit suffix and fall back to
// width/height when no viewBox is given. Anything that is not one rect
// followed by circles is rejected with an INVALID_MARKUP error.
package svg
