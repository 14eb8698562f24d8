// Package transform implements the transformer plugin: it knows a set of
// coordinate frames and a declared set of frame-to-frame transformations,
// and on Configure splits the declarations into those whose frames are all
// known (needed) and those that reference an unknown frame (unmapped).
package transform
