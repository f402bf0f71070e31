package users

// Response messages. Clients match on these strings.
const (
	msgInvalidBody = "Invalid Request Body"

	msgTeamNotFound     = "Team Not Found."
	msgNotTeamAdmin     = "Unauthorized To Invite User To Team"
	msgUserExists       = "User Already Exists"
	msgCreateFailed     = "Failed To Create User"
	msgInviteSendFailed = "Failed To Send Invitation Email"
	msgCreated          = "Successfully Created User And Sent Invitation Email"

	msgLoginFailed = "Failed To Login User"
	msgLoggedIn    = "Logged In User"

	msgBadToken      = "Failed to authenticate token."
	msgUserNotFound  = "User Not Found."
	msgConfirmFailed = "Failed To Confirm User"

	msgNotSelf      = "Not Authorized To Update User"
	msgUpdateFailed = "Failed To Update User"
	msgUpdated      = "Updated User"
)
