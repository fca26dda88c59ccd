// Package source resolves source strings such as "redis:plots" into tree sources.
//
// A source string names a backend and a target:
//
//	sample             the built-in four-node tree
//	file:PATH          a JSON or TOML file (a bare path with a known
//	                   extension works too)
//	redis:KEY          a JSON snapshot under KEY in Redis
//	mongo:COLLECTION   one document per node in a MongoDB collection
//
// Backends live in subpackages ([file], [redis], [mongo]); [Open] wires them
// to connection settings from [Config].
//
// [file]: github.com/matzehuels/treeplot/pkg/source/file
// [redis]: github.com/matzehuels/treeplot/pkg/source/redis
// [mongo]: github.com/matzehuels/treeplot/pkg/source/mongo
package source
