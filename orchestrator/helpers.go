package orchestrator

// plan turns the corpus ids into tasks, dropping the ignored ones.
func plan(ids []int, ignored func(int) bool, outDir string) (tasks []Task, skipped []int) {
	tasks = make([]Task, 0, len(ids))
	for _, id := range ids {
		if ignored != nil && ignored(id) {
			skipped = append(skipped, id)
			continue
		}
		tasks = append(tasks, Task{ID: id, OutDir: outDir})
	}
	return tasks, skipped
}

// poolSize bounds the worker count to [1, tasks].
func poolSize(workers, tasks int) int {
	if workers < 1 {
		workers = 1
	}
	if tasks > 0 && workers > tasks {
		workers = tasks
	}
	return workers
}
