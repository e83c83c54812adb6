// Package runtime provides the execution context for ctxmenu commands.
//
// It encapsulates shared dependencies needed by actions, such as the
// logger, the prompter and the configuration location, and resolves a fresh
// Session (configuration, workbench path, engine) for every operation.
package runtime
