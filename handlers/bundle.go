package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	RendezVous   *RendezVousHandler
	Consultation *ConsultationHandler
	Paiement     *PaiementHandler
	Session      *SessionHandler
	Chat         *ChatHandler
	User         *UserHandler
}
