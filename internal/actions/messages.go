package actions

// User-facing notices shared by the install and uninstall sequences
const (
	msgEnabled        = "Custom context menu enabled. Restart VS Code to see the changes."
	msgDisabled       = "Custom context menu disabled and reverted to default. Restart VS Code to see the changes."
	msgNotInstalled   = "Custom context menu is not installed. Nothing to do."
	msgAdmin          = "Run ctxmenu with administrator privileges to modify the VS Code installation."
	msgPathNotFound   = "Unable to locate the VS Code installation path. Set it with `ctxmenu config set vscodeInstallPath <dir>` or pass --install-path."
	msgSomethingWrong = "Something went wrong: "
	msgRestartPrompt  = "Restart VS Code now?"
	msgReloadTip      = "Run \"Developer: Reload Window\" in VS Code, or set restartCommand to restart it from here."
)
