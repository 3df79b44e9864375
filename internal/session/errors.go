package session

import "errors"

var (
	// ErrImageDecode — загруженные байты не читаются как картинка.
	ErrImageDecode = errors.New("cannot decode uploaded image")

	// ErrNoImage — шаг требует загруженную и живую картинку.
	ErrNoImage = errors.New("no image uploaded")

	// ErrPreconditionNotMet — guard шага "спросить" не прошёл, сессия не тронута.
	ErrPreconditionNotMet = errors.New("precondition not met")
)
