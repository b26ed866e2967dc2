// Package job runs one smoothing job described by a YAML file: load a
// dataset from a blob store, run an operation, store the result and
// optionally a cached neighbor graph and a rendered channel.
package job
