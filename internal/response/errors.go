package response

// ErrCode identifies why a console request did not render its view.
type ErrCode string

const (
	// ─── Session ───────────────────────────────────────────────────────
	ErrLoginRequired  ErrCode = "LOGIN_REQUIRED"
	ErrSessionLoading ErrCode = "SESSION_LOADING"
	ErrSessionExpired ErrCode = "SESSION_EXPIRED"
	ErrLoginFailed    ErrCode = "LOGIN_FAILED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrAccessDenied ErrCode = "ACCESS_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrInvalidID  ErrCode = "INVALID_ID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Backend ───────────────────────────────────────────────────────
	ErrBackend            ErrCode = "BACKEND_ERROR"
	ErrBackendUnavailable ErrCode = "BACKEND_UNAVAILABLE"
	ErrFeedUnavailable    ErrCode = "FEED_UNAVAILABLE"
	ErrAuditUnavailable   ErrCode = "AUDIT_UNAVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the message shown for code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrLoginRequired:
		return "Silakan login terlebih dahulu."
	case ErrSessionLoading:
		return "Sesi sedang dimuat. Silakan tunggu."
	case ErrSessionExpired:
		return "Sesi Anda telah berakhir. Silakan login kembali."
	case ErrLoginFailed:
		return "Login gagal."

	case ErrAccessDenied:
		return "Anda tidak memiliki akses ke halaman ini."

	case ErrValidation:
		return "Validasi gagal. Silakan periksa masukan Anda."
	case ErrInvalidID:
		return "Format ID tidak valid."

	case ErrNotFound:
		return "Data tidak ditemukan."

	case ErrBackend:
		return "Server mengembalikan kesalahan."
	case ErrBackendUnavailable:
		return "Server tidak dapat dihubungi."
	case ErrFeedUnavailable:
		return "Notifikasi langsung tidak tersedia."
	case ErrAuditUnavailable:
		return "Jejak audit tidak tersedia."

	case ErrRateLimitExceeded:
		return "Terlalu banyak percobaan. Silakan coba lagi nanti."

	case ErrInternal:
		return "Terjadi kesalahan server internal."
	default:
		return "Terjadi kesalahan yang tidak terduga."
	}
}
