package buildinfo

var (
    Version = "dev"
    Commit  = ""
    BuiltAt = ""
)

func String() string {
    s := Version
    if Commit != "" { s += " (" + Commit + ")" }
    if BuiltAt != "" { s += " built " + BuiltAt }
    return s
}
