// Package mesh extracts 2D/3D geometry from a compiled shape module via a
// subdivision tree (quadtree/octree), marching squares/cubes, and dual
// contouring. It consumes an interp.Evaluator and an ir.Module; it
// never constructs or mutates a Shape tree itself.
package mesh
