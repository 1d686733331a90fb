package classifier

// Buckets produced by the extension table
const (
	BucketImages     = "Images"
	BucketDocs       = "Docs"
	BucketArchives   = "Archives"
	BucketInstallers = "Installers"
	BucketAudio      = "Audio"
	BucketVideo      = "Video"
	BucketCode       = "Code"
	BucketData       = "Data"
	BucketOther      = "Other"
)

// extensionBuckets maps lowercase extensions to their bucket. It is never
// written after package init.
var extensionBuckets = map[string]string{
	// Images
	".png":  BucketImages,
	".jpg":  BucketImages,
	".jpeg": BucketImages,
	".gif":  BucketImages,
	".svg":  BucketImages,
	".webp": BucketImages,
	".heic": BucketImages,
	".heif": BucketImages,
	".bmp":  BucketImages,
	".tif":  BucketImages,
	".tiff": BucketImages,
	".avif": BucketImages,
	".ico":  BucketImages,
	".psd":  BucketImages,
	".ai":   BucketImages,
	".eps":  BucketImages,
	".dng":  BucketImages,
	".cr2":  BucketImages,
	".nef":  BucketImages,
	".arw":  BucketImages,

	// Documents
	".pdf":     BucketDocs,
	".docx":    BucketDocs,
	".doc":     BucketDocs,
	".xlsx":    BucketDocs,
	".xls":     BucketDocs,
	".pptx":    BucketDocs,
	".ppt":     BucketDocs,
	".txt":     BucketDocs,
	".md":      BucketDocs,
	".rtf":     BucketDocs,
	".odt":     BucketDocs,
	".ods":     BucketDocs,
	".odp":     BucketDocs,
	".pages":   BucketDocs,
	".numbers": BucketDocs,
	".key":     BucketDocs,
	".epub":    BucketDocs,
	".mobi":    BucketDocs,
	".log":     BucketDocs,
	".tex":     BucketDocs,
	".gdoc":    BucketDocs,
	".gsheet":  BucketDocs,
	".gslides": BucketDocs,

	// Archives
	".zip":     BucketArchives,
	".rar":     BucketArchives,
	".7z":      BucketArchives,
	".tar":     BucketArchives,
	".gz":      BucketArchives,
	".bz2":     BucketArchives,
	".xz":      BucketArchives,
	".tgz":     BucketArchives,
	".tbz":     BucketArchives,
	".tbz2":    BucketArchives,
	".tar.gz":  BucketArchives,
	".tar.bz2": BucketArchives,
	".tar.xz":  BucketArchives,
	".iso":     BucketArchives,

	// Installers
	".exe":        BucketInstallers,
	".msi":        BucketInstallers,
	".msix":       BucketInstallers,
	".msixbundle": BucketInstallers,
	".appx":       BucketInstallers,
	".appxbundle": BucketInstallers,
	".apk":        BucketInstallers,
	".cab":        BucketInstallers,
	".dmg":        BucketInstallers,
	".pkg":        BucketInstallers,
	".deb":        BucketInstallers,
	".rpm":        BucketInstallers,

	// Audio
	".mp3":  BucketAudio,
	".m4a":  BucketAudio,
	".aac":  BucketAudio,
	".ogg":  BucketAudio,
	".opus": BucketAudio,
	".wma":  BucketAudio,
	".wav":  BucketAudio,
	".flac": BucketAudio,

	// Video
	".mp4":  BucketVideo,
	".m4v":  BucketVideo,
	".mov":  BucketVideo,
	".mkv":  BucketVideo,
	".avi":  BucketVideo,
	".wmv":  BucketVideo,
	".webm": BucketVideo,
	".flv":  BucketVideo,

	// Code
	".js":      BucketCode,
	".jsx":     BucketCode,
	".ts":      BucketCode,
	".tsx":     BucketCode,
	".py":      BucketCode,
	".ps1":     BucketCode,
	".psm1":    BucketCode,
	".psd1":    BucketCode,
	".bat":     BucketCode,
	".cmd":     BucketCode,
	".sh":      BucketCode,
	".c":       BucketCode,
	".cpp":     BucketCode,
	".h":       BucketCode,
	".hpp":     BucketCode,
	".cs":      BucketCode,
	".java":    BucketCode,
	".go":      BucketCode,
	".rs":      BucketCode,
	".rb":      BucketCode,
	".php":     BucketCode,
	".swift":   BucketCode,
	".kt":      BucketCode,
	".kts":     BucketCode,
	".sql":     BucketCode,
	".toml":    BucketCode,
	".ini":     BucketCode,
	".cfg":     BucketCode,
	".html":    BucketCode,
	".htm":     BucketCode,
	".css":     BucketCode,
	".gscript": BucketCode,

	// Data
	".yaml":    BucketData,
	".yml":     BucketData,
	".csv":     BucketData,
	".json":    BucketData,
	".jsonl":   BucketData,
	".ndjson":  BucketData,
	".xml":     BucketData,
	".parquet": BucketData,
	".tsv":     BucketData,
	".db":      BucketData,
	".sqlite":  BucketData,
	".sqlite3": BucketData,
	".db3":     BucketData,
	".feather": BucketData,
	".avro":    BucketData,
	".orc":     BucketData,
}

// BucketForExtension returns the bucket for a lowercase extension such as ".pdf"
func BucketForExtension(ext string) (string, bool) {
	bucket, ok := extensionBuckets[ext]
	return bucket, ok
}

// Buckets returns the distinct buckets of the extension table plus Other
func Buckets() []string {
	return []string{
		BucketImages,
		BucketDocs,
		BucketArchives,
		BucketInstallers,
		BucketAudio,
		BucketVideo,
		BucketCode,
		BucketData,
		BucketOther,
	}
}
