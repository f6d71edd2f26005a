package xmldom

import "log/slog"

// pkgLogger is the package-wide slog.Logger used for debug-level diagnostic
// traces. It is never consulted to decide control flow; apart from the
// unknown entities that UnescapeString passes through unchanged, every
// condition it logs is also surfaced through a returned error or SAX
// callback. Callers
// may replace it (e.g. to attach request-scoped attributes) with
// SetLogger.
var pkgLogger = slog.Default()

// SetLogger replaces the package's diagnostic logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	pkgLogger = l
}

func logParseError(err *ParseError) {
	pkgLogger.Debug("xmldom: parse error", "kind", err.Kind, "message", err.Message, "line", err.Loc.Line, "column", err.Loc.Column)
}

func logSAXVeto(hook string, name DOMString) {
	pkgLogger.Debug("xmldom: sax callback vetoed node", "hook", hook, "name", string(name))
}

func logUnknownEntity(name string, loc SourceLocation) {
	pkgLogger.Debug("xmldom: entity table miss", "entity", name, "line", loc.Line, "column", loc.Column)
}
