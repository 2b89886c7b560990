package usecase

// Avisos de formulario.
const (
	MsgEmailTaken        = "Este correo ya está registrado"
	MsgArticleNameTaken  = "Ya existe un artículo con este nombre"
	MsgResponsibleTaken  = "El responsable ya tiene un almacén asignado"
	MsgResponsibleRole   = "El responsable debe ser un trabajador activo"
	MsgCategoryMismatch  = "La categoría del artículo debe coincidir con la del almacén"
	MsgIdentifierTaken   = "Ya existe un almacén con este identificador"
	MsgWrongPassword     = "Contraseña actual incorrecta"
	MsgAccessDenied      = "No tienes permisos para acceder a esta sección."
	MsgSignInFailed      = "No se pudo iniciar sesión. Verifica tus credenciales."
	MsgRegisterFailed    = "Hubo un problema al registrar el usuario."
	MsgUserCreateFailed  = "Error al crear el usuario"
	MsgUserUpdateFailed  = "Error al actualizar el usuario"
	MsgProfileFailed     = "Error al actualizar perfil"
	MsgPasswordFailed    = "Error al cambiar contraseña"
	MsgResetMailFailed   = "Ocurrió un error al enviar el correo electrónico"
	MsgResetFailed       = "Ocurrió un error al restablecer la contraseña"
	MsgResetDone         = "Tu contraseña ha sido restablecida con éxito"
	MsgCategoryFailed    = "Error al crear la categoría"
	MsgStorageFailed     = "Error al crear el almacén"
	MsgStorageUpdFailed  = "Error al actualizar el almacén"
	MsgArticleFailed     = "Error al crear el artículo"
	MsgArticleUpdFailed  = "Error al actualizar el artículo"
	MsgNoStorageAssigned = "No tienes un almacén asignado"
)
