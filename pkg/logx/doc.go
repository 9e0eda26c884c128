// Package logx builds shaberax's console loggers.
//
// Sinks are zerolog loggers whose output is rendered by a Policy: each
// severity picks its own text template, so a line looks like
//
//	RL - 2024-05-01 12:00:00,000 : STEP 100 : 12.500
//
// instead of JSON. Sinks are registered by name in a Registry and created
// once; asking for the same name again returns the existing sink.
package logx
