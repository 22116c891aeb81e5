package services

import "errors"

// Категории ошибок. Handlers map a category to an HTTP status with errors.Is;
// every specific error below wraps exactly one of them.
var (
	ErrNotFound             = errors.New("requested resource not found")
	ErrValidationFailed     = errors.New("validation failed")
	ErrConflict             = errors.New("state conflict")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
)

// serviceError carries a user-facing message and its category.
type serviceError struct {
	kind error
	msg  string
}

func newServiceError(kind error, msg string) error {
	return &serviceError{kind: kind, msg: msg}
}

func (e *serviceError) Error() string { return e.msg }

func (e *serviceError) Unwrap() error { return e.kind }

// Ошибки подсчёта очков
var (
	ErrTiedSetScore        = newServiceError(ErrValidationFailed, "Skor tidak boleh seri")
	ErrNegativeSetScore    = newServiceError(ErrValidationFailed, "Skor tidak boleh negatif")
	ErrSetScoreOutOfRange  = newServiceError(ErrValidationFailed, "Skor set maksimal 7")
	ErrInvalidSetScore     = newServiceError(ErrValidationFailed, "Skor set tidak valid (hanya 6-4, 7-5 atau 7-6)")
	ErrMatchModeMismatch   = newServiceError(ErrValidationFailed, "Mode pertandingan tidak sesuai")
	ErrParticipantCount    = newServiceError(ErrValidationFailed, "Pertandingan individu harus memiliki tepat 2 peserta")
	ErrMatchSidesMissing   = newServiceError(ErrValidationFailed, "Tim kandang dan tandang wajib diisi")
	ErrSameCompetitor      = newServiceError(ErrValidationFailed, "Peserta tidak boleh bertanding melawan dirinya sendiri")
	ErrCompetitorKind      = newServiceError(ErrValidationFailed, "Jenis peserta tidak sesuai dengan mode pertandingan")
	ErrCompetitorSport     = newServiceError(ErrValidationFailed, "Peserta bukan bagian dari cabang olahraga ini")
	ErrInvalidMatchMode    = newServiceError(ErrValidationFailed, "Mode pertandingan tidak dikenal")
	ErrScoringSystem       = newServiceError(ErrValidationFailed, "Sistem penilaian cabang olahraga tidak mendukung operasi ini")
	ErrNegativeFinalScore  = newServiceError(ErrValidationFailed, "Skor akhir tidak boleh negatif")
	ErrMatchFinished       = newServiceError(ErrConflict, "Pertandingan sudah selesai")
	ErrMatchSetLimit       = newServiceError(ErrConflict, "Pertandingan sudah memiliki 3 set")
	ErrConcurrentSetUpdate = newServiceError(ErrConflict, "Set sudah tercatat, silakan muat ulang")
)

// Ошибки продажи билетов
var (
	ErrInvalidQuantity    = newServiceError(ErrValidationFailed, "Jumlah tiket minimal 1")
	ErrTicketSalesClosed  = newServiceError(ErrConflict, "Penjualan tiket sudah ditutup karena acara telah dimulai")
	ErrTicketNotScheduled = newServiceError(ErrConflict, "Jadwal acara untuk tiket ini belum tersedia")
	ErrInsufficientQuota  = newServiceError(ErrConflict, "Tiket tidak cukup tersedia")
	ErrPerUserLimit       = newServiceError(ErrConflict, "Melebihi batas pembelian tiket per pengguna")
	ErrHolderNameTooLong  = newServiceError(ErrValidationFailed, "Nama pemegang tiket maksimal 100 karakter")
)

// Ошибки сущностей
var (
	ErrMatchNotFound      = newServiceError(ErrNotFound, "Pertandingan tidak ditemukan")
	ErrSportNotFound      = newServiceError(ErrNotFound, "Cabang olahraga tidak ditemukan")
	ErrTeamNotFound       = newServiceError(ErrNotFound, "Tim atau atlet tidak ditemukan")
	ErrTicketTypeNotFound = newServiceError(ErrNotFound, "Jenis tiket tidak ditemukan")
	ErrOrderNotFound      = newServiceError(ErrNotFound, "Pesanan tidak ditemukan")
	ErrTicketNotFound     = newServiceError(ErrNotFound, "Tiket tidak ditemukan pada pesanan ini")
)

// Ошибки доступа
var (
	ErrSportAccessDenied = newServiceError(ErrForbiddenOperation, "Anda tidak memiliki akses ke cabang olahraga ini")
	ErrRoleNotAllowed    = newServiceError(ErrForbiddenOperation, "Peran Anda tidak diizinkan untuk operasi ini")
)

// Ошибки файлов
var (
	ErrLogoContentType = newServiceError(ErrValidationFailed, "Logo harus berupa gambar PNG, JPEG atau WebP")
)
