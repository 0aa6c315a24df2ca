// Package targets turns template targets into absolute output paths.
//
// A target value may contain ${name} placeholders. ${sourceBasename} is the
// stem of the triggering file; any other name is looked up in the triggering
// file's data, context[dataKey][name]. The expanded path is joined with every
// location the target's root kind resolves to.
package targets
