// Package thoughts is the composition root of a small local-first notebook
// for short "thoughts".
//
// A thought is a piece of text tagged with one of five categories (Work,
// Personal, Study, Ideas, Tasks). The notebook keeps them newest-first in
// memory, restores them from a single key in a local key-value store when
// opened, and writes the whole sequence back after every change.
//
// Storage adapters:
//
//   - fs (default): one file per key in the data directory, written atomically.
//     Supports watching for changes made by other processes.
//   - sqlite: a single kv table in thoughts.db.
//
// Usage:
//
//	nb, err := thoughts.Open(dir, thoughts.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer nb.Close()
//
//	nb.Add("Buy milk", core.CategoryTasks)
//	for _, t := range nb.Search("milk") {
//		fmt.Println(t.Content)
//	}
package thoughts
