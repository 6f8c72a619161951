package http

// Get registers a GET route
func (r *Router[T]) Get(pattern string, h Handler[T]) error { return r.On("GET", pattern, h) }

// Post registers a POST route
func (r *Router[T]) Post(pattern string, h Handler[T]) error { return r.On("POST", pattern, h) }

// Put registers a PUT route
func (r *Router[T]) Put(pattern string, h Handler[T]) error { return r.On("PUT", pattern, h) }

// Delete registers a DELETE route
func (r *Router[T]) Delete(pattern string, h Handler[T]) error { return r.On("DELETE", pattern, h) }
