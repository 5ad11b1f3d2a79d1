package service

import "errors"

// Error taxonomy check-in; controller yang memetakan ke status HTTP,
// service tidak tahu apa-apa soal HTTP.
var (
	ErrSessionNotFound      = errors.New("session tidak ditemukan")
	ErrSessionNotStarted    = errors.New("session belum dimulai")
	ErrSessionClosed        = errors.New("session sudah ditutup")
	ErrOrganizationMismatch = errors.New("member bukan anggota organisasi session ini")
	ErrDuplicateCheckIn     = errors.New("sudah pernah check-in di session ini")
	ErrInvalidLocation      = errors.New("lokasi tidak valid")
	ErrRecordNotFound       = errors.New("attendance record tidak ditemukan")
	ErrAlreadyCheckedOut    = errors.New("sudah check-out")
	ErrPersistence          = errors.New("gagal menyimpan ke storage")
)
